package cache

// Read-operation keys. A key on its own names a listing; WithParam
// scopes it to one entity or argument.
const (
	KeyPosts       = "posts"
	KeyRecentPosts = "recent-posts"
	KeyPostByID    = "post-by-id"
	KeySearchPosts = "search-posts"
	KeySavedPosts  = "saved-posts"
	KeyUsers       = "users"
	KeyUserByID    = "user-by-id"
	KeyCurrentUser = "current-user"
	KeyFollowing   = "following"
	KeyFollowers   = "followers"
	KeyComments    = "comments"
)

func WithParam(key, param string) string {
	return key + ":" + param
}
