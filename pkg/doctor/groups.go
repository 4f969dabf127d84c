package doctor

// groupDefinitions defines the check groups with their metadata.
var groupDefinitions = map[string]struct {
	Name        string
	Description string
	CheckIDs    []string
}{
	GroupPython: {
		Name:        "Python",
		Description: "Interpreter and package installer that drive every install step",
		CheckIDs:    []string{IDPython, IDPip},
	},
	GroupVCS: {
		Name:        "Version Control",
		Description: "Required for cloning the workload's source repository",
		CheckIDs:    []string{IDGit},
	},
	GroupSystem: {
		Name:        "System Packages",
		Description: "Required for installing OS-level development headers and tools",
		CheckIDs:    []string{IDApt, IDSudo},
	},
	GroupMedia: {
		Name:        "Media",
		Description: "Transcoding tool the video workload shells out to",
		CheckIDs:    []string{IDFFmpeg},
	},
}

// GetGroups returns all check groups.
func GetGroups() []CheckGroup {
	var groups []CheckGroup
	for _, groupID := range GetAllGroupIDs() {
		def := groupDefinitions[groupID]
		groups = append(groups, CheckGroup{
			ID:          groupID,
			Name:        def.Name,
			Description: def.Description,
		})
	}
	return groups
}

// GetGroupDefinition returns the definition for a specific group.
func GetGroupDefinition(groupID string) (struct {
	Name        string
	Description string
	CheckIDs    []string
}, bool) {
	def, ok := groupDefinitions[groupID]
	return def, ok
}

// GetAllGroupIDs returns all group IDs in display order.
func GetAllGroupIDs() []string {
	return []string{GroupPython, GroupVCS, GroupSystem, GroupMedia}
}
