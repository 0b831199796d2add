// Package utils provides small conversion helpers shared by the transport packages.
// Feed payloads are loosely typed (a price may arrive as int32, int64 or an integral
// double), so decoders coerce through ToInt64 instead of trusting one wire type.
package utils
