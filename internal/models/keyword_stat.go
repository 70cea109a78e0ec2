package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// StatValue is a keyword statistic. The provider sends plain numbers or
// strings such as "< 10"; both are kept as their string form.
type StatValue string

// UnmarshalJSON accepts a JSON number, string or null.
func (v *StatValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StatValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = StatValue(n.String())
	return nil
}

// Float parses the value after removing thousands separators and a leading
// "<" marker, so "< 10" yields 10. Unparseable values yield 0.
func (v StatValue) Float() float64 {
	s := strings.NewReplacer(",", "", "<", "").Replace(string(v))
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// KeywordStat is one row of the related-keyword statistics.
type KeywordStat struct {
	RelKeyword             string    `json:"relKeyword"`
	MonthlyPcQcCnt         StatValue `json:"monthlyPcQcCnt"`
	MonthlyMobileQcCnt     StatValue `json:"monthlyMobileQcCnt"`
	MonthlyAvePcClkCnt     StatValue `json:"monthlyAvePcClkCnt"`
	MonthlyAveMobileClkCnt StatValue `json:"monthlyAveMobileClkCnt"`
	MonthlyAvePcCtr        StatValue `json:"monthlyAvePcCtr"`
	MonthlyAveMobileCtr    StatValue `json:"monthlyAveMobileCtr"`
	PlAvgDepth             StatValue `json:"plAvgDepth"`
	CompIdx                string    `json:"compIdx"`
	BuyerJourney           string    `json:"buyerJourney,omitempty"`
}

// TotalSearchVolume is the PC plus mobile monthly query count.
func (k KeywordStat) TotalSearchVolume() float64 {
	return k.MonthlyPcQcCnt.Float() + k.MonthlyMobileQcCnt.Float()
}
