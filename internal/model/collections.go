package model

// Collection names shared by every store backend.
const (
	CollectionAdmins       = "admins"
	CollectionFaculty      = "faculty"
	CollectionEvents       = "events"
	CollectionArticles     = "articles"
	CollectionChatbotRules = "chatbot_rules"
)
