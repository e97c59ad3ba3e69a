// Package sitedata defines the portfolio data model, the normalisation rules
// applied before rendering, and the loader contracts used to fetch data
// documents. Loader implementations live under internal/sitedata and are
// constructed through the top-level portfolio package.
package sitedata
