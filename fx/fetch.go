package fx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/finreport/finreport/date"
	"github.com/shopspring/decimal"
)

// DefaultFeedURL serves the latest ECB reference rates as JSON:
//
//	{"base":"EUR","date":"2025-08-29","rates":{"USD":1.1687,...}}
const DefaultFeedURL = "https://api.frankfurter.dev/v1/latest?base=EUR"

// Fetch downloads the latest daily reference rates from a JSON feed and
// returns the quote date with the rate per currency code.
func Fetch(client *http.Client, addr string) (date.Date, map[string]decimal.Decimal, error) {
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return date.Date{}, nil, fmt.Errorf("error in wget %q: %w", addr, err)
	}

	jdate, err := jsonpath.Get("$.date", jobj)
	if err != nil {
		return date.Date{}, nil, fmt.Errorf("error parsing rate feed: %q %w", "$.date", err)
	}
	str, ok := jdate.(string)
	if !ok {
		return date.Date{}, nil, fmt.Errorf("error parsing rate feed: date is not a string: %v", jdate)
	}
	on, err := date.Parse(str)
	if err != nil {
		return date.Date{}, nil, err
	}

	jrates, err := jsonpath.Get("$.rates", jobj)
	if err != nil {
		return date.Date{}, nil, fmt.Errorf("error parsing rate feed: %q %w", "$.rates", err)
	}
	jmap, ok := jrates.(map[string]any)
	if !ok {
		return date.Date{}, nil, fmt.Errorf("error parsing rate feed: rates is not an object: %v", jrates)
	}

	rates := make(map[string]decimal.Decimal, len(jmap))
	for code, jval := range jmap {
		val, ok := jval.(float64)
		if !ok {
			return date.Date{}, nil, fmt.Errorf("error parsing rate feed: rate for %q is not a number: %v", code, jval)
		}
		rates[code] = decimal.NewFromFloat(val)
	}
	return on, rates, nil
}

// UpdateFile inserts the fetched rates as a new newest row of the history
// CSV at path. The ECB history file is ordered newest first, so the row goes
// right below the header. Updating an already present date is a no-op.
func UpdateFile(path string, on date.Date, rates map[string]decimal.Decimal) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read rate table %q: %w", path, err)
	}

	lines := strings.SplitN(string(content), "\n", 2)
	if len(lines) < 2 {
		return fmt.Errorf("rate table %q has no header", path)
	}
	header, rest := lines[0], lines[1]

	if strings.HasPrefix(rest, on.String()+",") {
		return nil // already up to date
	}

	codes := strings.Split(header, ",")
	fields := make([]string, len(codes))
	fields[0] = on.String()
	for i, code := range codes[1:] {
		rate, ok := rates[strings.TrimSpace(code)]
		if !ok {
			fields[i+1] = "N/A"
			continue
		}
		fields[i+1] = rate.String()
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	buf.WriteString("\n")
	buf.WriteString(strings.Join(fields, ","))
	buf.WriteString("\n")
	buf.WriteString(rest)
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Codes returns the currency codes of a fetched rate set, sorted.
func Codes(rates map[string]decimal.Decimal) []string {
	codes := make([]string, 0, len(rates))
	for c := range rates {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
