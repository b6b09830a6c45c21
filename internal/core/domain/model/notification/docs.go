// Package notification holds the one-way messages produced when a donor assigns
// an item. A notification is rendered once, at creation, and is never re-rendered:
// the donor's display name is frozen into the message text.
package notification
