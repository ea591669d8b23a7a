package generator

import (
	"fmt"
	"math/rand"
)

// Word pools for company names. Names only need to look plausible in a
// demo dataset; uniqueness is not required.

var companyRoots = []string{
	"Apex", "Summit", "Harbor", "Atlas", "Beacon", "Cascade", "Vertex",
	"Meridian", "Pioneer", "Quantum", "Sterling", "Northwind", "Redwood",
	"Bluewater", "Ironwood", "Lakeside", "Granite", "Horizon", "Keystone",
	"Silverline", "Crestview", "Oakfield", "Brightstone", "Clearpath",
	"Fairmont", "Goldleaf", "Highbridge", "Longview", "Maple", "Nimbus",
	"Orchard", "Pinnacle", "Riverbend", "Stonegate", "Trailhead", "Westgate",
}

var companySuffixes = []string{
	"Labs", "Systems", "Group", "Holdings", "Industries", "Partners",
	"Technologies", "Solutions", "Ventures", "Logistics", "Media",
	"Dynamics", "Collective", "Works", "Consulting", "Analytics",
}

// companyName draws a two- or three-part company name, e.g.
// "Cascade Dynamics" or "Harbor Ridge Group". Exactly three draws are made
// every call so the shared random sequence stays aligned regardless of the
// shape picked.
func companyName(r *rand.Rand) string {
	root := Choice(r, companyRoots)
	second := Choice(r, companyRoots)
	suffix := Choice(r, companySuffixes)
	if second != root && len(root)+len(second) < 16 {
		return fmt.Sprintf("%s %s %s", root, second, suffix)
	}
	return fmt.Sprintf("%s %s", root, suffix)
}
