package tableinfo

const (
	PostsTableName = "posts"

	PostIDColumn        = "id"
	PostTitleColumn     = "title"
	PostBodyColumn      = "body"
	PostUserIDColumn    = "user_id"
	PostCreatedAtColumn = "created_at"
	PostUpdatedAtColumn = "updated_at"
)

const (
	UsersTableName = "users"

	UserIDColumn    = "id"
	UserNameColumn  = "name"
	UserEmailColumn = "email"
)
