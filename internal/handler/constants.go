package handler

const (
	MsgRequirementsNotSatisfied = "REQUIREMENTS NOT SATISFIED"
	MsgUsernameTaken            = "USERNAME TAKEN"
	MsgUserDoesNotExist         = "USER DOES NOT EXIST"
	MsgIncorrectPassword        = "INCORRECT PASSWORD"
	MsgEmployeesDoNotExist      = "EMPLOYEES DO NOT EXIST"
	MsgConversationNotGroup     = "CONVERSATION NOT GROUP"
	MsgInvalidColor             = "color must be an integer between 0 and 15"
	MsgLoggedOut                = "logged out"
	MsgOperational              = "ALL ALMS SYSTEMS OPERATIONAL"
)
