package models

// User is a dashboard operator. Roles are Admin, Manager or Farmer.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	AvatarID string `json:"avatarId"`
}

// Alert is a dashboard notification raised by one of the modules.
type Alert struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Module    string `json:"module"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	Link      string `json:"link"`
}

// Activity is one line of the recent-activity feed.
type Activity struct {
	ID        int    `json:"id"`
	Activity  string `json:"activity"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
}
