package matcher

// ExperienceMatches compares the candidate's extracted minimum years against
// the job's extracted minimum. A job that states no requirement extracts to
// (0, 0), which every candidate satisfies.
func ExperienceMatches(resumeMinYears, jobMinYears int) bool {
	return resumeMinYears >= jobMinYears
}

// EducationMatches is satisfied when the job carries no degree marker, or
// the resume carries one.
func EducationMatches(resumeHasDegree, jobHasDegree bool) bool {
	return !jobHasDegree || resumeHasDegree
}
