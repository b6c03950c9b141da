// Package ctx holds the keys inventory stores in a context.Context.
package ctx

import "context"

// CTXKey is the type used by all keys put in a context.
// As recommended by the package context, inventory defines and uses its own data type for keys in the use of WithValue.
type CTXKey string

// CtxUser is the name of the person working with the application.
const CtxUser CTXKey = "inventory.user"

// WithUser returns a copy of ctx carrying the given user name.
func WithUser(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, CtxUser, name)
}

// User returns the user name stored in ctx and whether one was set.
func User(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(CtxUser).(string)

	return name, ok && name != ""
}
