/*
Package option implements optional values. Option types are used for
configuration values where "unset" has to be distinguished from a zero
value, e.g. a caller's heading-underline override.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package option
