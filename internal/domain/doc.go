// Package domain contains the core entities of the task manager: users
// and their tasks. Entities are plain data records validated up front;
// relationships between them are resolved by explicit store queries, never
// by lazy traversal, so ownership checks stay auditable.
package domain
