package roster

// Role is the tactical category of a VALORANT agent.
type Role string

const (
	RoleDuelist    Role = "Duelist"
	RoleSentinel   Role = "Sentinel"
	RoleController Role = "Controller"
	RoleInitiator  Role = "Initiator"
	RoleUndefined  Role = "Undefined"
)

// roleTable is scanned in declaration order and the first matching role
// wins. The order is part of the contract: Viper appears under both
// Sentinel and Controller and resolves to Sentinel.
var roleTable = []struct {
	Role   Role
	Agents []string
}{
	{RoleDuelist, []string{"Jett", "Phoenix", "Reyna", "Raze", "Yoru", "Neon"}},
	{RoleSentinel, []string{"Sage", "Cypher", "Killjoy", "Viper"}},
	{RoleController, []string{"Omen", "Astra", "Brimstone", "Viper"}},
	{RoleInitiator, []string{"Sova", "Breach", "Skye", "KAY/O", "Fade"}},
}

// ClassifyAgent maps an agent name to its role. Agents absent from every
// role set map to RoleUndefined.
func ClassifyAgent(agent string) Role {
	for _, entry := range roleTable {
		for _, name := range entry.Agents {
			if name == agent {
				return entry.Role
			}
		}
	}
	return RoleUndefined
}
