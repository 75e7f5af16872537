// Package domain contains the core domain model for AccessAI.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML parsing,
// net/http, the browser, or the filesystem. Infra/adapters map into/from these types.
package domain
