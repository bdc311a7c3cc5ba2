package common

// DefaultAuthor is stored on posts created without an author.
const DefaultAuthor = "John Doe"

// UploadsPrefix is the directory (or object key prefix) uploaded bytes live under.
const UploadsPrefix = "uploads"

// DefaultRecentConversations is the page size of AIConversations.GetRecent
// when the caller does not supply a positive limit.
const DefaultRecentConversations = 10

// AuthorizationHeader carries the admin bearer token.
const AuthorizationHeader = "Authorization"
