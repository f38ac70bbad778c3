package gateway

import "time"

// User is the profile document mirrored from the account subsystem,
// keyed by its own document id and carrying the account id.
type User struct {
	ID        string    `json:"$id"`
	AccountID string    `json:"accountId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	ImageURL  string    `json:"imageUrl"`
	ImageID   string    `json:"imageId"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"$createdAt"`
}

type NewUser struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserInput struct {
	UserID   string
	Name     string
	Bio      string
	ImageURL string
	ImageID  string
	File     []byte
	FileName string
}

type Post struct {
	ID        string    `json:"$id"`
	Creator   string    `json:"creator"`
	Caption   string    `json:"caption"`
	ImageURL  string    `json:"imageUrl"`
	ImageID   string    `json:"imageId"`
	Location  string    `json:"location"`
	Tags      []string  `json:"tags"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"$createdAt"`
	UpdatedAt time.Time `json:"$updatedAt"`
}

type NewPost struct {
	UserID   string
	Caption  string
	Location string
	Tags     string
	File     []byte
	FileName string
}

type UpdatePostInput struct {
	PostID   string
	Caption  string
	Location string
	Tags     string
	ImageURL string
	ImageID  string
	File     []byte
	FileName string
}

// SavedRecord links a user to a post; its existence signifies "saved".
type SavedRecord struct {
	ID     string `json:"$id"`
	UserID string `json:"user"`
	PostID string `json:"post"`
}

// FollowRecord links a follower to a followed user; its existence
// signifies "follows".
type FollowRecord struct {
	ID          string `json:"$id"`
	FollowerID  string `json:"FollowerId"`
	FollowingID string `json:"FollowingId"`
}

type Comment struct {
	ID        string    `json:"$id"`
	PostID    string    `json:"post"`
	UserID    string    `json:"user"`
	Text      string    `json:"comment"`
	CreatedAt time.Time `json:"$createdAt"`
}

type NewComment struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
	Text   string `json:"comment"`
}
