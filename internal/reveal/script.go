package reveal

import (
	"strconv"
	"strings"
)

// DefaultScriptPath is where the client script is written next to the
// pages.
const DefaultScriptPath = "reveal.js"

const scriptTemplate = `(function () {
  function revealAll() {
    document.querySelectorAll('[data-animate]').forEach(function (el) {
      el.classList.add('visible');
    });
  }

  function setup() {
    var animated = document.querySelectorAll('[data-animate]:not(.visible)');
    if (!animated.length) return;

    if (!('IntersectionObserver' in window)) {
      revealAll();
      return;
    }

    var observer = new IntersectionObserver(
      function (entries) {
        entries.forEach(function (entry) {
          if (entry.isIntersecting) {
            entry.target.classList.add('visible');
            observer.unobserve(entry.target);
          }
        });
      },
      { threshold: __THRESHOLD__ }
    );

    animated.forEach(function (el) { observer.observe(el); });
  }

  if (document.readyState === 'loading') {
    document.addEventListener('DOMContentLoaded', setup);
  } else {
    setup();
  }
})();
`

// Script returns the browser side of the animator for the given threshold.
func Script(threshold float64) string {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return strings.ReplaceAll(scriptTemplate, "__THRESHOLD__", strconv.FormatFloat(threshold, 'f', -1, 64))
}
