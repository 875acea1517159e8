package persist

import (
	"fmt"

	"golang.org/x/text/encoding/traditionalchinese"
)

// ValidateNameCharset rejects a character name that can't round-trip
// through the client's configured codepage (spec.md's character-creation
// module leaves client text-encoding validation to the persistence layer,
// the same boundary the teacher drew between its packet writer and its
// character-creation handler). Only MS950 (traditional Chinese) is
// checked today since it's the only client_language_code this project
// has shipped data for; other codepages pass through unchecked.
func ValidateNameCharset(name, clientLanguageCode string) error {
	if clientLanguageCode != "MS950" {
		return nil
	}
	enc := traditionalchinese.Big5.NewEncoder()
	encoded, err := enc.String(name)
	if err != nil {
		return fmt.Errorf("name %q is not representable in MS950: %w", name, err)
	}
	dec := traditionalchinese.Big5.NewDecoder()
	roundTripped, err := dec.String(encoded)
	if err != nil || roundTripped != name {
		return fmt.Errorf("name %q does not round-trip through MS950", name)
	}
	return nil
}
