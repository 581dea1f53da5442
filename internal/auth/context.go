package auth

import "context"

type accountKey struct{}

// ContextWithAccount marks ctx as belonging to an authenticated account.
func ContextWithAccount(ctx context.Context, accountNumber int64) context.Context {
	return context.WithValue(ctx, accountKey{}, accountNumber)
}

func AccountFromContext(ctx context.Context) (int64, bool) {
	n, ok := ctx.Value(accountKey{}).(int64)
	return n, ok
}
