package main

import "regexp"

// Time control spellings, Japanese forms included: "1m30s+2s", "10分,3秒",
// "movetime=5s", "N=100000".
var (
	fischerRegex  = regexp.MustCompile(`^(?:([0-9.]+)[:分m])?(?:([0-9.]+)[秒s]?)?(?:\+([0-9.]+)[秒s]?)?$`)
	byoyomiRegex  = regexp.MustCompile(`^(?:([0-9.]+)[:分m])?(?:([0-9.]+)[秒s]?)?[,、;]([0-9.]+)(?:[秒s](?:未満)?)?$`)
	movetimeRegex = regexp.MustCompile(`^(?:([0-9.]+)秒未満|movetime=([0-9.]+)[s秒]?)$`)
	nodesRegex    = regexp.MustCompile(`^N=([0-9]+)$`)
)
