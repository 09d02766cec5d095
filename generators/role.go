package generators

type Role string

const (
	RoleUser      Role = "user"
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleModel     Role = "model"
	RoleLog       Role = "log"
)

// forGemini maps a role to Gemini's vocabulary. Log entries have no wire role.
func (r Role) forGemini() (string, bool) {
	switch r {
	case RoleLog:
		return "", false
	case RoleAssistant:
		return string(RoleModel), true
	}
	return string(r), true
}

// forOpenAI maps a role to the chat completions vocabulary.
func (r Role) forOpenAI() (string, bool) {
	switch r {
	case RoleLog:
		return "", false
	case RoleModel:
		return string(RoleAssistant), true
	}
	return string(r), true
}
