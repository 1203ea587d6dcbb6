package projects

import (
	"github.com/August-Icekimo/DEV-DB-Cloner/anonymize"
)

// DefaultFilters returns the filters of the large HR tables that are usually restricted to recent data.
func DefaultFilters() map[string]string {
	return map[string]string{
		"WORK_TIME_REC":  "data_year > '114' AND mm > '3'",
		"SALARY_DETAIL":  "data_year >= '113' AND data_year <= '114'",
		"SYSTEM_LOG":     "log_year > '113' AND log_mm >= '06'",
		"ATTENDANCE_REC": "data_year = '114'",
	}
}

// DefaultRules returns the masking rules of the personal data held in the HR tables.
func DefaultRules() anonymize.Rules {
	seeded := func(fn string) anonymize.Rule {
		return anonymize.Rule{Function: fn, SeedColumn: "emp_no"}
	}
	return anonymize.Rules{
		"EMP_DATA": {
			"emp_name":    seeded(anonymize.FuncObfuscateName),
			"emp_ename":   {Function: anonymize.FuncClearContent},
			"license_id":  {Function: anonymize.FuncAnonymizeId},
			"address":     seeded(anonymize.FuncObfuscateAddress),
			"home_addr":   seeded(anonymize.FuncObfuscateAddress),
			"emer_member": seeded(anonymize.FuncObfuscateSpouseName),
			"tel":         seeded(anonymize.FuncObfuscatePhone),
			"mobile":      seeded(anonymize.FuncObfuscatePhone),
			"emer_tel":    seeded(anonymize.FuncObfuscatePhone),
			"emer_mobile": seeded(anonymize.FuncObfuscatePhone),
			"zap_address": seeded(anonymize.FuncObfuscateAddress),
			"con_address": seeded(anonymize.FuncObfuscateAddress),
		},
		"ADVANCE_BONUS_GRANT": {
			"emp_name": seeded(anonymize.FuncObfuscateName),
		},
		"DEPENDENT_DATA": {
			"dep_name":  seeded(anonymize.FuncObfuscateName),
			"dep_id_no": {Function: anonymize.FuncAnonymizeId},
		},
	}
}
