// Package constants holds identifiers shared across layers.
package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvStage      = "stage"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Document store providers
const (
	StoreProviderFirebase = "firebase"
	StoreProviderMemory   = "memory"
)

// Auth providers
const (
	AuthProviderFirebase = "firebase"
	AuthProviderJWT      = "jwt"
)

// Root paths in the document store. Every repository owns exactly one root.
const (
	PathCustomers       = "customer/bucket"
	PathDeliveryPersons = "deliveryPerson/bucket"
	PathProducts        = "productList"
	PathTags            = "tagList"
	PathAdmins          = "admin"
	PathAttendance      = "attendance"
	PathTransactions    = "transactionList"
	PathDeposits        = "depositObjectList"
	PathMoveHistory     = "moveEntryHistory"
	PathAccessKey       = "others/accessKey"
)

// Change topics, one per repository.
const (
	TopicCustomers       = "customers"
	TopicDeliveryPersons = "deliveryPersons"
	TopicProducts        = "products"
	TopicTags            = "tags"
	TopicAdmins          = "admins"
	TopicAttendance      = "attendance"
	TopicTransactions    = "transactions"
	TopicDeposits        = "deposits"
	TopicMoveHistory     = "moveHistory"
)

// AllTopics lists every change topic in load order.
func AllTopics() []string {
	return []string{
		TopicCustomers,
		TopicDeliveryPersons,
		TopicProducts,
		TopicTags,
		TopicAdmins,
		TopicAttendance,
		TopicTransactions,
		TopicDeposits,
		TopicMoveHistory,
	}
}

// Audit author used for entries written by the chat agent.
const AIAgentAuthor = "AI_AGENT"

// Placeholder shown for names that cannot be resolved.
const UnknownName = "NA"

// Highlight colors for inventory rows.
const (
	HighlightNoTag      = "k"
	HighlightUnknownTag = "o"
)
