// Package domain contains the core business entities for Beacon.
// These types carry no infrastructure dependencies and are shared
// between services and adapters.
package domain
