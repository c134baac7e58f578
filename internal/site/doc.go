// Package site hosts the attribution cache on the nextclip website:
// a capture middleware running the page-load flow per landing request,
// a per-request cookie adapter for the browser medium, visitor-scoped
// access to the shared structured store, and the accessor API other
// page scripts and the browser extension read from.
package site
