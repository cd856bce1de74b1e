package model

// Project is a named container that groups tasks on the server. Server
// assigned and read-only client-side.
type Project struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CreatedAt   string   `json:"created_at"`
	Permissions []string `json:"permissions"`
}

// CanDelete reports whether the server granted delete permission.
func (p *Project) CanDelete() bool { return p.hasPermission("delete") }

// CanAdd reports whether the server granted task-creation permission.
func (p *Project) CanAdd() bool { return p.hasPermission("add") }

func (p *Project) hasPermission(name string) bool {
	for _, perm := range p.Permissions {
		if perm == name {
			return true
		}
	}
	return false
}
