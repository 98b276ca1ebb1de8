// Package binder fills request structs from URL path parameters.
//
//	type messageRequest struct {
//		ID string `path:"id"`
//	}
//
//	router.Get("/messages/{id}", handler.Wrap(show,
//		handler.WithBinders[handler.Context, messageRequest](binder.ChiPath()),
//	))
//
// Path accepts any PathExtractor; ChiPath reads chi route parameters.
// Supported field kinds are strings, signed and unsigned integers, floats,
// bools, pointers to those and comma-separated slices.
package binder
