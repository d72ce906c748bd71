// Package service provides application-level services for managing users,
// ads, and ad requests. Services orchestrate domain objects and stores;
// every mutation runs inside exactly one database transaction, and mail
// events are emitted only after that transaction has committed.
package service
