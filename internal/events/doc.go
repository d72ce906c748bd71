// Package events provides types and interfaces for decoupled event dispatch.
//
// Services emit events after their transaction commits without knowing which
// handlers will process them. The mail pipeline is the primary consumer: a
// handler in the task package converts mail request events into background
// delivery tasks.
package events
