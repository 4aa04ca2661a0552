package studio

import "github.com/teeforge/backend/internal/domain/shared"

// Domain errors for the design studio
var (
	// ErrCorruptSnapshot is returned when a snapshot cannot be restored.
	// The restore attempt is aborted and the live scene is left unchanged.
	ErrCorruptSnapshot = shared.NewDomainError("CORRUPT_SNAPSHOT", "Snapshot is corrupt and cannot be restored")

	// ErrExportFailed is returned when the render surface cannot produce
	// a flattened design image. The basket-add is aborted.
	ErrExportFailed = shared.NewDomainError("EXPORT_FAILED", "Design export failed")

	// ErrCatalogFetchFailed is returned when template assets cannot be
	// fetched from the content backend. The editor remains usable.
	ErrCatalogFetchFailed = shared.NewDomainError("CATALOG_FETCH_FAILED", "Failed to fetch design assets")

	// ErrElementNotFound is returned when an element id does not exist in the scene
	ErrElementNotFound = shared.NewDomainError("ELEMENT_NOT_FOUND", "Element not found in scene")
)
