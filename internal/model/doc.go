// Package model defines the domain types and request/response shapes for the
// time tracker API: users provisioned from the identity provider, and the
// jobs stored in each user's sub-collection.
package model
