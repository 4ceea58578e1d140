// Package model holds the domain types shared by the repository, service and
// handler layers, along with their JSON shapes.
package model
