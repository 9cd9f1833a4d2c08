// Package license resolves license keys (mit, apache-2.0, gpl-3.0) to
// template text. The Provider interface abstracts the source: RemoteProvider
// fetches from fixed upstream URLs, BundledProvider serves embedded copies,
// and ChainProvider composes the two with an offline fallback.
package license
