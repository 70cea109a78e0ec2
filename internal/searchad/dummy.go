package searchad

import "keywordjourney/internal/models"

// DummyStats returns five fixed rows built around keyword, used when no
// credentials are configured.
func DummyStats(keyword string) []models.KeywordStat {
	return []models.KeywordStat{
		{
			RelKeyword:             keyword,
			MonthlyPcQcCnt:         "1234",
			MonthlyMobileQcCnt:     "5678",
			MonthlyAvePcClkCnt:     "123.4",
			MonthlyAveMobileClkCnt: "567.8",
			MonthlyAvePcCtr:        "10.5",
			MonthlyAveMobileCtr:    "8.3",
			PlAvgDepth:             "2.1",
			CompIdx:                "low",
		},
		{
			RelKeyword:             keyword + " 추천",
			MonthlyPcQcCnt:         "890",
			MonthlyMobileQcCnt:     "2345",
			MonthlyAvePcClkCnt:     "89.0",
			MonthlyAveMobileClkCnt: "234.5",
			MonthlyAvePcCtr:        "7.2",
			MonthlyAveMobileCtr:    "9.1",
			PlAvgDepth:             "3.5",
			CompIdx:                "mid",
		},
		{
			RelKeyword:             keyword + " 가격",
			MonthlyPcQcCnt:         "456",
			MonthlyMobileQcCnt:     "1890",
			MonthlyAvePcClkCnt:     "45.6",
			MonthlyAveMobileClkCnt: "189.0",
			MonthlyAvePcCtr:        "5.8",
			MonthlyAveMobileCtr:    "6.4",
			PlAvgDepth:             "4.2",
			CompIdx:                "high",
		},
		{
			RelKeyword:             keyword + " 후기",
			MonthlyPcQcCnt:         "<10",
			MonthlyMobileQcCnt:     "3456",
			MonthlyAvePcClkCnt:     "0",
			MonthlyAveMobileClkCnt: "345.6",
			MonthlyAvePcCtr:        "0",
			MonthlyAveMobileCtr:    "11.2",
			PlAvgDepth:             "1.8",
			CompIdx:                "low",
		},
		{
			RelKeyword:             keyword + " 비교",
			MonthlyPcQcCnt:         "789",
			MonthlyMobileQcCnt:     "4567",
			MonthlyAvePcClkCnt:     "78.9",
			MonthlyAveMobileClkCnt: "456.7",
			MonthlyAvePcCtr:        "8.9",
			MonthlyAveMobileCtr:    "10.3",
			PlAvgDepth:             "2.9",
			CompIdx:                "mid",
		},
	}
}

// FallbackStats returns the single placeholder row served when the provider fails.
func FallbackStats(keyword string) []models.KeywordStat {
	return []models.KeywordStat{{
		RelKeyword:             keyword,
		MonthlyPcQcCnt:         "N/A",
		MonthlyMobileQcCnt:     "N/A",
		MonthlyAvePcClkCnt:     "0",
		MonthlyAveMobileClkCnt: "0",
		MonthlyAvePcCtr:        "0",
		MonthlyAveMobileCtr:    "0",
		PlAvgDepth:             "0",
		CompIdx:                "low",
	}}
}
