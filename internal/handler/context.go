package handler

type ContextKey string

var (
	RoleCtxKey   ContextKey = "role"
	SubCtxKey    ContextKey = "sub"
	CompanyIDCtx ContextKey = "companyID"
	ShiftCtx     ContextKey = "shift"
	RotationCtx  ContextKey = "rotation"
	LeaveTypeCtx ContextKey = "leaveType"
	ExpenseCtx   ContextKey = "expense"
)
