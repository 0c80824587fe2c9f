package classify

// QueryType routes a chatbot query to a generation strategy.
type QueryType string

const (
	QueryTypeGeneral   QueryType = "general"
	QueryTypeReasoning QueryType = "reasoning"
	QueryTypeWebSearch QueryType = "web_search"
)

// RAGType selects a knowledge domain for retrieval. RAGTypeNone means
// retrieval is skipped entirely.
type RAGType string

const (
	RAGTypeVisaLaw        RAGType = "visa_law"
	RAGTypeSocialSecurity RAGType = "social_security"
	RAGTypeTaxFinance     RAGType = "tax_finance"
	RAGTypeMedicalHealth  RAGType = "medical_health"
	RAGTypeEmployment     RAGType = "employment"
	RAGTypeDailyLife      RAGType = "daily_life"
	RAGTypeNone           RAGType = "none"
)

// RAGTypes lists the retrievable domains in classification-scan order.
// RAGTypeNone is excluded: it is the default, never a match target.
var RAGTypes = []RAGType{
	RAGTypeVisaLaw,
	RAGTypeSocialSecurity,
	RAGTypeTaxFinance,
	RAGTypeMedicalHealth,
	RAGTypeEmployment,
	RAGTypeDailyLife,
}

// AgentType is the coarse agent routing decision.
type AgentType string

const (
	AgentTypeGeneral AgentType = "general"
	AgentTypeTask    AgentType = "task"
	AgentTypeDomain  AgentType = "domain"
)

// ActionType describes what kind of action the agent should take.
type ActionType string

const (
	ActionTypeInform  ActionType = "inform"
	ActionTypeExecute ActionType = "execute"
	ActionTypeDecide  ActionType = "decide"
)
