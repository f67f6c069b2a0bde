package output

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "output")
