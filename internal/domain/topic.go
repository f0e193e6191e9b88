package domain

// TopicTag is the coarse kind of distress a message expresses.
type TopicTag string

// Topic tags in classifier priority order.
const (
	TopicAddiction      TopicTag = "addiction"
	TopicSeparation     TopicTag = "separation"
	TopicRelationship   TopicTag = "relationship"
	TopicGrief          TopicTag = "grief"
	TopicMood           TopicTag = "mood"
	TopicWorkFinance    TopicTag = "work_finance"
	TopicHealth         TopicTag = "health"
	TopicFamilyConflict TopicTag = "family_conflict"
	TopicFaith          TopicTag = "faith"
	TopicGeneral        TopicTag = "general"
)

// TopicKey groups advice by who or what it concerns. It keys UserState.Topics.
type TopicKey string

// Topic keys in classifier priority order.
const (
	KeyChild       TopicKey = "child"
	KeyPartner     TopicKey = "partner"
	KeyFamily      TopicKey = "family"
	KeyWorkFinance TopicKey = "work_finance"
	KeyMood        TopicKey = "mood"
	KeyGrief       TopicKey = "grief"
	KeyAddiction   TopicKey = "addiction"
	KeyFaith       TopicKey = "faith"
	KeyGeneral     TopicKey = "general"
)
