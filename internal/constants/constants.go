package constants

// ContextKeyUserID is the gin context key holding the resolved caller id.
const ContextKeyUserID = "user_id"

// HeaderUserID is the legacy identity header carried by the original client.
const HeaderUserID = "user-id"

const MinPasswordLength = 6
