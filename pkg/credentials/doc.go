// Package credentials resolves client credentials from incoming HTTP requests.
//
// A family of extractors each reads one transport: the clientid/clientsecret
// cookie pair, custom x-client-* headers with body-field fallback, HTTP Basic
// auth, and signed JWT credentials in a header or cookie. The Pipeline
// composes them in a fixed precedence order with first-match-wins,
// short-circuit semantics. Extractors never error for an absent transport,
// only for a present but malformed one.
package credentials
