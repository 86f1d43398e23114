// Package policy is the single place that decides which admin-console
// features a role may see. Screen-level checks and navigation rendering all
// go through Allowed; nothing else hard-codes role conditionals.
package policy

import "github.com/thedigitalbhaiya/ans-sub000/core/admin"

// Feature keys for every admin-console screen.
type Feature string

const (
	FeatureDashboard    Feature = "dashboard"
	FeatureStudents     Feature = "students"
	FeatureAdmissions   Feature = "admissions"
	FeatureAttendance   Feature = "attendance"
	FeatureFees         Feature = "fees"
	FeatureResults      Feature = "results"
	FeatureHomework     Feature = "homework"
	FeatureTimetable    Feature = "timetable"
	FeatureCirculars    Feature = "circulars"
	FeatureGallery      Feature = "gallery"
	FeatureAchievements Feature = "achievements"
	FeatureFeedback     Feature = "feedback"
	FeatureSocialLinks  Feature = "sociallinks"
	FeatureSettings     Feature = "settings"
)

// PermissionFlags gate individual features for the Staff role. They live in
// the global settings and only a Super Admin may change them.
type PermissionFlags struct {
	AllowFees       bool `json:"allow_fees"`
	AllowAdmissions bool `json:"allow_admissions"`
	AllowNotices    bool `json:"allow_notices"`
	AllowGallery    bool `json:"allow_gallery"`
	AllowFeedback   bool `json:"allow_feedback"`
}

var (
	teacherDenied = map[Feature]bool{
		FeatureSettings:   true,
		FeatureFees:       true,
		FeatureFeedback:   true,
		FeatureAdmissions: true,
	}

	staffFlagged = map[Feature]func(PermissionFlags) bool{
		FeatureFees:       func(f PermissionFlags) bool { return f.AllowFees },
		FeatureAdmissions: func(f PermissionFlags) bool { return f.AllowAdmissions },
		FeatureCirculars:  func(f PermissionFlags) bool { return f.AllowNotices },
		FeatureGallery:    func(f PermissionFlags) bool { return f.AllowGallery },
		FeatureFeedback:   func(f PermissionFlags) bool { return f.AllowFeedback },
	}
)

// Allowed reports whether the role may access the feature. Precedence, first
// match wins:
//  1. Super Admin: everything.
//  2. Teacher: denied settings, fees, feedback and admissions; class-scoped
//     features are further confined via ClassScope inside those features,
//     not here.
//  3. Staff: denied settings; flag-gated fees, admissions, circulars,
//     gallery and feedback; everything else allowed.
//  4. Any other role: allowed. Default-permit matches the portal's observed
//     behavior for unrecognized roles; see the design notes before relying
//     on it.
func Allowed(role admin.Role, feature Feature, flags PermissionFlags) bool {
	switch role {
	case admin.RoleSuperAdmin:
		return true
	case admin.RoleTeacher:
		return !teacherDenied[feature]
	case admin.RoleStaff:
		if feature == FeatureSettings {
			return false
		}
		if gate, ok := staffFlagged[feature]; ok {
			return gate(flags)
		}
		return true
	}
	return true
}

// ClassScope returns the class/section confinement for the account. Only a
// Teacher with an assignment is confined; everyone else sees all classes.
func ClassScope(acct admin.Account) (class, section string, confined bool) {
	if acct.Role == admin.RoleTeacher && acct.AssignedClass != "" {
		return acct.AssignedClass, acct.AssignedSection, true
	}
	return "", "", false
}
