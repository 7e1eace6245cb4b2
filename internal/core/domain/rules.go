package domain

// SubjectRule binds one academic subject to its keyword list. Keywords are
// matched as lowercase substrings of filename or path; the first hit assigns
// the subject and ends that rule's scan.
type SubjectRule struct {
	Subject  string   `yaml:"subject"`
	Keywords []string `yaml:"keywords"`
}

// RuleSet holds the static classification tables. Subjects is an ordered
// slice on purpose: rule precedence follows slice order, not map iteration.
type RuleSet struct {
	Extensions map[string]string `yaml:"extensions"`
	Subjects   []SubjectRule     `yaml:"subjects"`
}

// DefaultRuleSet returns the built-in extension table and subject rules.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Extensions: map[string]string{
			"pdf": CategoryDocuments, "doc": CategoryDocuments, "docx": CategoryDocuments,
			"txt": CategoryDocuments, "rtf": CategoryDocuments, "odt": CategoryDocuments,
			"md": CategoryDocuments,

			"xls": CategorySpreadsheets, "xlsx": CategorySpreadsheets,
			"csv": CategorySpreadsheets, "ods": CategorySpreadsheets,

			"ppt": CategoryPresentations, "pptx": CategoryPresentations, "odp": CategoryPresentations,

			"jpg": CategoryImages, "jpeg": CategoryImages, "png": CategoryImages,
			"gif": CategoryImages, "bmp": CategoryImages, "svg": CategoryImages,
			"tiff": CategoryImages, "webp": CategoryImages,

			"mp3": CategoryAudio, "wav": CategoryAudio, "flac": CategoryAudio,
			"ogg": CategoryAudio, "aac": CategoryAudio,

			"mp4": CategoryVideo, "avi": CategoryVideo, "mkv": CategoryVideo,
			"mov": CategoryVideo, "wmv": CategoryVideo, "webm": CategoryVideo,

			"zip": CategoryArchives, "rar": CategoryArchives, "tar": CategoryArchives,
			"gz": CategoryArchives, "7z": CategoryArchives,

			"py": CategoryCode, "js": CategoryCode, "html": CategoryCode,
			"css": CategoryCode, "java": CategoryCode, "cpp": CategoryCode,
			"c": CategoryCode, "h": CategoryCode, "php": CategoryCode,
			"go": CategoryCode, "rb": CategoryCode, "rs": CategoryCode,
			"sh": CategoryCode, "json": CategoryCode, "xml": CategoryCode,
			"sql": CategoryCode,

			"exe": CategoryExecutables, "msi": CategoryExecutables, "app": CategoryExecutables,
			"dll": CategoryExecutables, "so": CategoryExecutables, "bin": CategoryExecutables,

			"sys": CategorySystem, "ini": CategorySystem, "log": CategorySystem,
			"dat": CategorySystem, "bak": CategorySystem, "tmp": CategorySystem,
			"config": CategorySystem,
		},
		Subjects: []SubjectRule{
			{
				Subject: SubjectEngineeringDrawing,
				Keywords: []string{
					"drawing", "engineering", "mechanical", "cad", "autocad", "projection",
					"dimension", "blueprint", "technical drawing", "schematic", "isometric",
					"orthographic", "assembly", "drafting", "design", "component",
				},
			},
			{
				Subject: SubjectMathematics,
				Keywords: []string{
					"math", "equation", "calculus", "algebra", "geometry", "theorem",
					"function", "statistical", "statistics", "probability", "mathematical",
					"formula", "derivative", "integral", "matrix", "vector", "differential",
				},
			},
			{
				Subject: SubjectPhysics,
				Keywords: []string{
					"physics", "mechanics", "dynamics", "kinematics", "force", "energy",
					"thermodynamics", "electricity", "magnetism", "quantum", "relativity",
					"fluid dynamics", "optics", "wave", "particle",
				},
			},
			{
				Subject: SubjectChemistry,
				Keywords: []string{
					"chemistry", "chemical", "molecule", "atom", "compound", "reaction",
					"organic", "inorganic", "solution", "acid", "base", "element", "periodic",
					"biochemistry", "polymer",
				},
			},
			{
				Subject: SubjectComputerScience,
				Keywords: []string{
					"algorithm", "data structure", "programming", "software", "database",
					"network", "artificial intelligence", "machine learning", "computer",
					"operating system", "security", "web", "cloud computing",
				},
			},
		},
	}
}
