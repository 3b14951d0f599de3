package all

import (
	// Import all the sources so they register themselves
	_ "github.com/darianmavgo/tabimport/sources/csv"
	_ "github.com/darianmavgo/tabimport/sources/excel"
	_ "github.com/darianmavgo/tabimport/sources/html"
	_ "github.com/darianmavgo/tabimport/sources/literal"
)
