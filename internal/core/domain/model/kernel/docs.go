// Package kernel contains shared value objects used across all domain
// aggregates. It currently provides the UUID identifier type.
//
// Kernel types are immutable, validated at construction, and carry no
// dependencies on other domain packages.
package kernel
