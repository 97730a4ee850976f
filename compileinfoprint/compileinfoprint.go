// compileinfoprint is imported for the side effect of logging the
// compileinfo to os.Stderr
package compileinfoprint

import "github.com/carbocation/hdthermal/compileinfo"

func init() {
	compileinfo.Log()
}
