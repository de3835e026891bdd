/*
Package result contains types of results returned by NEAR node RPC methods.

Nodes of different versions spell some fields differently (snake_case,
camelCase or legacy names), so every type here accepts all known spellings
of its fields when decoding and always encodes the canonical snake_case one.
*/
package result
