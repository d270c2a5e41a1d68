/*

Belvu reads, cleans, sorts and colours multiple sequence alignments.

The basic usage of belvu looks like this:

	belvu convert -o out.msf --to msf alignment.sto

, this will convert a Stockholm alignment to MSF. Alignments can be
cleaned:

	belvu clean --nr 80 --gappy 50 alignment.sto

, this removes sequences at least 80% identical to another one and
sequences with at least 50% gaps. To see all the commands and options
run:

	belvu --help

*/
package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/belvu/alnio"
	"bitbucket.org/Davydov/belvu/cons"
	"bitbucket.org/Davydov/belvu/order"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("belvu")
var formatter = logging.MustStringFormatter(`%{message}`)

// packages whose log level is set from the command line.
var logModules = []string{"belvu", "engine", "aln", "alnio", "cons", "edit", "order"}

var formatNames = []string{"auto", "stockholm", "msf", "fasta", "fasta-unaligned"}

// command-line options
var (
	// application
	app = kingpin.New("belvu", "multiple sequence alignment viewer and editor").Version(version)

	// input
	inFormat = app.Flag("format", "input format, detected by default").Default("auto").Enum(formatNames...)
	sep      = app.Flag("sep", "separator of names and coordinates ('=' for GCG)").Default("/").Enum("/", "=")
	orgTag   = app.Flag("org-tag", "#=GS tag naming the organism").Default("OS").String()

	// scoring and colouring
	penalizeGaps = app.Flag("penalize-gaps", "count residues against gaps as mismatches").Bool()
	ignoreGaps   = app.Flag("ignore-gaps", "compute conservation over residues only, ignoring gaps").Bool()
	colorMode    = app.Flag("color", "colouring mode").Default("similarity").Enum(cons.ModeNames()...)
	scheme       = app.Flag("scheme", "residue colour scheme").Default(cons.SchemeStandard).Enum(cons.SchemeNames...)
	schemeFile   = app.Flag("scheme-file", "read a custom colour scheme (overrides --scheme)").ExistingFile()
	lowCutoff    = app.Flag("low", "low conservation cutoff (mode default if negative)").Default("-1").Float64()
	midCutoff    = app.Flag("mid", "mid conservation cutoff (mode default if negative)").Default("-1").Float64()
	maxCutoff    = app.Flag("max", "max conservation cutoff (mode default if negative)").Default("-1").Float64()
	resIDCutoff  = app.Flag("resid", "percent identity cutoff of residue-id colouring").Default("20").Float64()
	keepEmpty    = app.Flag("keep-empty-columns", "don't remove all-gap columns after removing sequences").Bool()

	// output
	outF      = app.Flag("out", "write the alignment to a file, standard output by default").Short('o').String()
	outFormat = app.Flag("to", "output format, same as input by default").Default("auto").Enum(formatNames...)
	outLogF   = app.Flag("log", "write log to a file").String()
	logLevel  = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")

	// commands
	convertCmd = app.Command("convert", "convert an alignment to another format")
	convertIn  = convertCmd.Arg("alignment", "input alignment ('-' for standard input)").Required().String()

	infoCmd  = app.Command("info", "print a summary of an alignment")
	infoIn   = infoCmd.Arg("alignment", "input alignment").Required().String()
	infoJSON = infoCmd.Flag("json", "write json summary to a file").String()

	cleanCmd      = app.Command("clean", "remove columns and sequences")
	cleanIn       = cleanCmd.Arg("alignment", "input alignment").Required().String()
	cleanColumns  = cleanCmd.Flag("columns", "remove columns FROM-TO").String()
	cleanEmpty    = cleanCmd.Flag("empty", "remove columns with at least N% gaps").Default("-1").Float64()
	cleanGappy    = cleanCmd.Flag("gappy", "remove sequences with at least N% gaps").Default("-1").Float64()
	cleanPartial  = cleanCmd.Flag("partial", "remove sequences starting or ending with a gap").Bool()
	cleanNR       = cleanCmd.Flag("nr", "remove sequences at least N% identical to another one").Default("-1").Float64()
	cleanOutliers = cleanCmd.Flag("outliers", "remove sequences less than N% identical to any other").Default("-1").Float64()
	cleanScore    = cleanCmd.Flag("score", "remove sequences scoring below N").Default("-1").Float64()
	cleanRef      = cleanCmd.Flag("ref", "score sequences against the one matching a name (* and ? allowed)").String()

	sortCmd     = app.Command("sort", "reorder the sequences")
	sortIn      = sortCmd.Arg("alignment", "input alignment").Required().String()
	sortBy      = sortCmd.Flag("by", "sort order").Default(order.Alpha.String()).Enum(order.KindNames()...)
	sortRef     = sortCmd.Flag("ref", "sort by similarity to the sequence matching a name (* and ? allowed)").String()
	sortRefMode = sortCmd.Flag("ref-mode", "similarity to the reference").Default("identity").Enum("identity", "score")
	sortTree    = sortCmd.Flag("tree", "sort as the leaves of a newick tree").ExistingFile()

	consCmd       = app.Command("cons", "print the conservation of every column")
	consIn        = consCmd.Arg("alignment", "input alignment").Required().String()
	consSchemeOut = consCmd.Flag("write-scheme", "write the colour scheme to a file").String()

	distCmd      = app.Command("dist", "print the pairwise distance matrix")
	distIn       = distCmd.Arg("alignment", "input alignment").Required().String()
	distKimura   = distCmd.Flag("kimura", "correct distances for multiple substitutions").Bool()
	distIdentity = distCmd.Flag("identity", "print percent identities instead of distances").Bool()

	plotCmd    = app.Command("plot", "plot the conservation profile")
	plotIn     = plotCmd.Arg("alignment", "input alignment").Required().String()
	plotOut    = plotCmd.Arg("image", "output image, the extension sets the format (png, svg, pdf)").Required().String()
	plotWindow = plotCmd.Flag("window", "running average window").Default("5").Int()

	showCmd   = app.Command("show", "print the alignment coloured by conservation")
	showIn    = showCmd.Arg("alignment", "input alignment").Required().String()
	showWidth = showCmd.Flag("width", "columns per block").Default("60").Int()

	matchCmd = app.Command("match", "insert a matched sequence into the alignment")
	matchIn  = matchCmd.Arg("alignment", "input alignment").Required().String()
	matchF   = matchCmd.Arg("match", "match file: sequence, '"+alnio.MatchFooter+"', segments").Required().ExistingFile()
	matchRef = matchCmd.Flag("after", "insert after the sequence matching a name").String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	for _, module := range logModules {
		logging.SetLevel(level, module)
	}

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	startTime := time.Now()

	switch command {
	case convertCmd.FullCommand():
		err = convert()
	case infoCmd.FullCommand():
		err = info()
	case cleanCmd.FullCommand():
		err = clean()
	case sortCmd.FullCommand():
		err = sortAlignment()
	case consCmd.FullCommand():
		err = conservation()
	case distCmd.FullCommand():
		err = distances()
	case plotCmd.FullCommand():
		err = plotConservation()
	case showCmd.FullCommand():
		err = show()
	case matchCmd.FullCommand():
		err = match()
	}
	if err != nil {
		log.Fatal(err)
	}

	log.Infof("Running time: %v", time.Since(startTime))
}
