package docs

import "time"

// ErrorInfo is the error part of every failed response
// @Description Error code and human readable message
type ErrorInfo struct {
	Code    string   `json:"code" example:"TOKEN_EXPIRED"`
	Message string   `json:"message" example:"TOKEN EXPIRED"`
	Details []string `json:"details,omitempty"`
}

type LoginInput struct {
	Username string `json:"username" example:"jdoe"`
	Password string `json:"password" example:"correct-horse"`
}

// LoginResult carries the session token to send in the token header
type LoginResult struct {
	Token    string   `json:"token" example:"20240301123045123Z9f8e..."`
	Employee Employee `json:"employee"`
}

type LogoutResult struct {
	Message string `json:"message" example:"logged out"`
}

type RegisterInput struct {
	Username string `json:"username" example:"jdoe" minLength:"2" maxLength:"32"`
	Name     string `json:"name" example:"John" minLength:"2" maxLength:"255"`
	Surname  string `json:"surname" example:"Doe" minLength:"2" maxLength:"255"`
	Password string `json:"password" example:"correct-horse" minLength:"8" maxLength:"48"`
}

type Employee struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"jdoe"`
	Name     string `json:"name" example:"John"`
	Surname  string `json:"surname" example:"Doe"`
	Color    int    `json:"color" example:"7" minimum:"0" maximum:"15"`
}

type UsernameTaken struct {
	Taken bool `json:"taken" example:"false"`
}

type SetColorInput struct {
	Color int `json:"color" example:"7" minimum:"0" maximum:"15"`
}

type CreateGroupInput struct {
	Name      string   `json:"name" example:"Backend team"`
	Employees []string `json:"employees" example:"bob,carol"`
}

type CreatedConversation struct {
	ID int64 `json:"id" example:"12"`
}

type AddToGroupInput struct {
	ConversationID int64  `json:"conversationId" example:"12"`
	Username       string `json:"username" example:"dave"`
}

type Participant struct {
	ID       int64  `json:"id" example:"2"`
	Username string `json:"username" example:"bob"`
	Name     string `json:"name" example:"Bob"`
	Surname  string `json:"surname" example:"Builder"`
}

type Conversation struct {
	ID              int64         `json:"id" example:"12"`
	Name            *string       `json:"name" example:"Backend team"`
	IsGroup         bool          `json:"isGroup" example:"true"`
	DatetimeCreated time.Time     `json:"datetimeCreated"`
	DatetimeUpdated time.Time     `json:"datetimeUpdated"`
	UnreadMessages  *int          `json:"unreadMessages,omitempty" example:"3"`
	Participants    []Participant `json:"participants,omitempty"`
}

type SendMessageInput struct {
	ConversationID int64  `json:"conversationId" example:"12"`
	Content        string `json:"content" example:"Deploy is done" minLength:"1" maxLength:"4096"`
}

type Message struct {
	ID              int64     `json:"id" example:"99"`
	EmployeeID      int64     `json:"employeeId" example:"1"`
	ConversationID  int64     `json:"conversationId" example:"12"`
	Content         string    `json:"content" example:"Deploy is done"`
	DatetimeCreated time.Time `json:"datetimeCreated"`
}

type Status struct {
	Message     string `json:"message" example:"ALL ALMS SYSTEMS OPERATIONAL"`
	ActiveUsers int    `json:"activeUsers" example:"4"`
	TotalUsers  int    `json:"totalUsers" example:"27"`
	Uptime      int64  `json:"uptime" example:"3600"`
	Version     string `json:"version" example:"1.0.0"`
}

type Health struct {
	Status    string    `json:"status" example:"healthy"`
	Database  string    `json:"database" example:"up"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version" example:"1.0.0"`
}
