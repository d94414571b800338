package components

import (
	"encoding/json"
	"log"
)

// JSON marshals an object to a JSON string, returning "{}" on error
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARNING] Error marshaling JSON: %v", err)
		return "{}"
	}
	return string(b)
}

// HXHeaders builds the hx-headers attribute value carrying the CSRF token
func HXHeaders(csrfToken string) string {
	return JSON(map[string]string{"X-CSRF-Token": csrfToken})
}
