// Package localecodes holds the static table of locale codes recognized
// by Mozilla's localization program. A locale directory whose name is
// not in this table is probably a typo, but it is only reported as a
// warning since new locale teams appear over time.
//
// Source list: https://wiki.mozilla.org/L10n:Localization_Teams
package localecodes

import "sort"

var mozillaLocaleCodes = map[string]bool{
	"ach":       true,
	"af":        true,
	"ak":        true,
	"am":        true,
	"an":        true,
	"anp":       true,
	"ar":        true,
	"arq":       true,
	"as":        true,
	"ast":       true,
	"aym":       true,
	"az":        true,
	"bal":       true,
	"bcl":       true,
	"be":        true,
	"bg":        true,
	"bg-IV":     true,
	"bho":       true,
	"bm":        true,
	"bn-BD":     true,
	"bn-IN":     true,
	"bo":        true,
	"bpy":       true,
	"br":        true,
	"brx":       true,
	"bs":        true,
	"bzj-BZ":    true,
	"ca":        true,
	"ca-valencia": true,
	"cak-GT":    true,
	"cax-BO":    true,
	"cbk":       true,
	"chf-MX":    true,
	"ckb":       true,
	"cly-MX":    true,
	"co":        true,
	"crh":       true,
	"crn-MX":    true,
	"cs":        true,
	"ctu-MX":    true,
	"cy":        true,
	"da":        true,
	"de":        true,
	"doi":       true,
	"dsb":       true,
	"dz":        true,
	"el":        true,
	"en-ARRR":   true,
	"en-CA":     true,
	"en-GB":     true,
	"en-Shaw":   true,
	"en-US":     true,
	"en-ZA":     true,
	"eo":        true,
	"es":        true,
	"es-AR":     true,
	"es-ES":     true,
	"es-CL":     true,
	"es-MX":     true,
	"et":        true,
	"eu":        true,
	"fa":        true,
	"ff":        true,
	"fi":        true,
	"fj":        true,
	"fo":        true,
	"fr":        true,
	"fur":       true,
	"fy-NL":     true,
	"ga-IE":     true,
	"gd":        true,
	"gl":        true,
	"gn-BO":     true,
	"gn-PY":     true,
	"gu-IN":     true,
	"ha":        true,
	"haw":       true,
	"hch-MX":    true,
	"he":        true,
	"hi-IN":     true,
	"hr":        true,
	"hsb":       true,
	"ht":        true,
	"hu":        true,
	"hus-MX":    true,
	"hy-AM":     true,
	"id":        true,
	"ig":        true,
	"ilo":       true,
	"is":        true,
	"it":        true,
	"ixl-GT":    true,
	"ja":        true,
	"jam-JM":    true,
	"jbo":       true,
	"jv":        true,
	"ka":        true,
	"kab":       true,
	"kea":       true,
	"kek-GT":    true,
	"ky":        true,
	"ky-cyrl":   true,
	"ki":        true,
	"kj":        true,
	"kk":        true,
	"km":        true,
	"kn":        true,
	"ko":        true,
	"kok":       true,
	"ks":        true,
	"ks-deva":   true,
	"ku":        true,
	"kw":        true,
	"la":        true,
	"laj":       true,
	"lb":        true,
	"lg":        true,
	"lgg":       true,
	"lij":       true,
	"lmo":       true,
	"lo":        true,
	"lt":        true,
	"lv":        true,
	"mai":       true,
	"mam-GT":    true,
	"man":       true,
	"mni":       true,
	"mag":       true,
	"mau-MX":    true,
	"meh-MX":    true,
	"mg":        true,
	"mi":        true,
	"min":       true,
	"mit-MX":    true,
	"mix-MX":    true,
	"mk":        true,
	"ml":        true,
	"mn":        true,
	"mqh-MX":    true,
	"mr":        true,
	"ms":        true,
	"mxp-MX":    true,
	"my":        true,
	"myv":       true,
	"nb-NO":     true,
	"nch-MX":    true,
	"nci-MX":    true,
	"ncj-MX":    true,
	"nd":        true,
	"ne-NP":     true,
	"nl":        true,
	"nn-NO":     true,
	"nso":       true,
	"nv":        true,
	"ny":        true,
	"oc":        true,
	"oc-ES-aranese": true,
	"om":        true,
	"or":        true,
	"os":        true,
	"ote-MX":    true,
	"oto-MX":    true,
	"pa":        true,
	"prs":       true,
	"pl":        true,
	"pms":       true,
	"ppl-SV":    true,
	"ps":        true,
	"pt-BR":     true,
	"pt-PT":     true,
	"quh":       true,
	"quy":       true,
	"quz":       true,
	"qvi-EC":    true,
	"rm":        true,
	"rn":        true,
	"ro":        true,
	"ru":        true,
	"rue":       true,
	"rw":        true,
	"sa":        true,
	"sah":       true,
	"sc":        true,
	"scn":       true,
	"shn":       true,
	"si":        true,
	"sio-US-lkt": true,
	"sk":        true,
	"sl":        true,
	"sm":        true,
	"sn":        true,
	"sna-zw":    true,
	"son":       true,
	"sq":        true,
	"sr":        true,
	"szl":       true,
	"srd":       true,
	"st":        true,
	"su":        true,
	"sv-SE":     true,
	"sw":        true,
	"ta":        true,
	"ta-LK":     true,
	"te":        true,
	"tg":        true,
	"th":        true,
	"ti":        true,
	"tl":        true,
	"tn":        true,
	"to":        true,
	"toj-MX":    true,
	"tr":        true,
	"trs-MX":    true,
	"teo":       true,
	"tsz-MX":    true,
	"tt":        true,
	"tzh-MX":    true,
	"tzj-GT":    true,
	"tzo-MX":    true,
	"ug":        true,
	"uk":        true,
	"ur":        true,
	"uz":        true,
	"vi":        true,
	"vmz-MX":    true,
	"wa":        true,
	"wo":        true,
	"xh":        true,
	"xog":       true,
	"yaq-MX":    true,
	"yo":        true,
	"yo-NG":     true,
	"yua-MX":    true,
	"yue":       true,
	"zai":       true,
	"zam-MX":    true,
	"zar-MX":    true,
	"zh-CN":     true,
	"zh-TW":     true,
	"zty-MX":    true,
}

// Known reports whether code is a recognized Mozilla locale code.
func Known(code string) bool {
	return mozillaLocaleCodes[code]
}

// All returns every recognized locale code in sorted order.
func All() []string {
	codes := make([]string, 0, len(mozillaLocaleCodes))
	for code := range mozillaLocaleCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
