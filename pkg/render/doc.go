// Package render dispatches template names to card builders. It owns the
// normalization of inbound card data, the fallback error document and the
// optional sanitizing and speech stages applied around every builder.
package render
