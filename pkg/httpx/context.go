package httpx

type ctxKey string

const (
	CtxKeyUserID    ctxKey = "user_id"
	CtxKeySessionID ctxKey = "session_id"
	CtxKeyClaims    ctxKey = "claims"
)
