// Package redact masks secrets in merged configuration before it is printed.
//
// Values are replaced whole when their option name looks sensitive (password,
// token, secret, api_key and similar). Other values are scanned with regex
// heuristics for secret-shaped content: AWS access key IDs, bearer tokens,
// JWTs, private key blocks, GitHub and Slack tokens, and credentials embedded
// in connection URLs.
package redact
