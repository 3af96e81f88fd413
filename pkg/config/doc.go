// Package config loads the settings for a rewrite run.
//
//	            +-------------+
//	            |   Default   |
//	            | (built-in)  |
//	            +------+------+
//	                   |
//	      +-----------+-----------+
//	      |           |           |
//	+-----+-----+ +---+---+ +-----+-----+
//	|   YAML    | | JSON  | |    HCL    |
//	|  Parser   | |Parser | |  Parser   |
//	+-----------+ +-------+ +-----------+
//
// 🔄 Flow:
// 1. Start from Default, the table the tool was written for
// 2. If a config file is given, parse it by extension
// 3. Fields present in the file replace the defaults
// 4. Validate, then hand the filter and rules to discover and rewrite
//
// A YAML file looks like:
//
//	root: src/pages/learning/exercises
//	extension: .jsx
//	markers: [Beginner, Intermediate, Advanced, Exercise]
//	ignore:
//	  - "**/archive/**"
//	rules:
//	  - old: text-slate-300
//	    new: text-gray-700
//
// and the same file in HCL:
//
//	root   = "src/pages/learning/exercises"
//	ignore = ["**/archive/**"]
//
//	rule {
//	  old = "text-slate-300"
//	  new = "text-gray-700"
//	}
package config
