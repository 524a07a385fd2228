package tk

import "src.elv.sh/rangebar/pkg/logutil"

var logger = logutil.GetLogger("[cli/tk] ")
