package config

import "src.elv.sh/rangebar/pkg/logutil"

var logger = logutil.GetLogger("[config] ")
