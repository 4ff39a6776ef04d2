// Package data bundles the reference tables the gateways key their lookups
// by: the gu → 법정동 code map for the real-estate API and the address
// master mapping gu/dong names to 8-digit dong ids. Both ship embedded and
// can be replaced by full datasets via config paths.
package data

import (
	"embed"
	"encoding/json"
	"os"
)

//go:embed real_estate.json address_master.json
var fs embed.FS

// AddressEntry is one row of the Seoul address master dataset.
type AddressEntry struct {
	GuName   string `json:"cgg_nm"`
	DongName string `json:"dong_nm"`
	DongID   string `json:"dong_id"`
}

type addressMaster struct {
	Data []AddressEntry `json:"DATA"`
}

// AddressBook resolves gu/dong names to dong ids.
type AddressBook struct {
	entries []AddressEntry
}

// DongID returns the 8-digit dong id for a gu/dong pair, or "" when the
// pair is unknown. Entries with malformed ids are skipped.
func (b *AddressBook) DongID(gu, dong string) string {
	for _, e := range b.entries {
		if e.GuName == gu && e.DongName == dong && len(e.DongID) == 8 {
			return e.DongID
		}
	}
	return ""
}

// LoadGuCodes loads the gu → LAWD code map, from path when given,
// otherwise from the embedded copy.
func LoadGuCodes(path string) (map[string]string, error) {
	raw, err := readFile(path, "real_estate.json")
	if err != nil {
		return nil, err
	}

	codes := make(map[string]string)
	if err := json.Unmarshal(raw, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// LoadAddressBook loads the address master, from path when given,
// otherwise from the embedded copy.
func LoadAddressBook(path string) (*AddressBook, error) {
	raw, err := readFile(path, "address_master.json")
	if err != nil {
		return nil, err
	}

	var master addressMaster
	if err := json.Unmarshal(raw, &master); err != nil {
		return nil, err
	}
	return &AddressBook{entries: master.Data}, nil
}

func readFile(path, embedded string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return fs.ReadFile(embedded)
}
