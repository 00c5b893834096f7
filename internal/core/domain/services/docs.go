// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the rental system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - PricingCalculator: derives a rental order's authoritative price breakdown
//   - StatusMachine: enforces legal status transitions under an injected policy
//   - QueuePartitioner: classifies a delivery worker's orders into day views
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
