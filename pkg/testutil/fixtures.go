package testutil

// ClangdTemplate has the include flags at indices 6..9.
const ClangdTemplate = `CompileFlags:
  Add:
    [
      "-std=c++20",
      "-Wall",
      "-Wextra",
      "-I{{FANY_ROOT}}",
      "-I{{VCPKG_INCLUDE}}",
      "-I{{UTFCPP}}",
      "-I{{BOOST}}",
      "-DFANY_DEBUG"
    ]
  Compiler: clang++
Diagnostics:
  UnusedIncludes: Strict
`

// CMakeListsTemplate has the Boost_ROOT assignment at index 18.
const CMakeListsTemplate = `cmake_minimum_required(VERSION 3.25)
project(FanImeEngineTests LANGUAGES CXX)

set(CMAKE_CXX_STANDARD 20)
set(CMAKE_CXX_STANDARD_REQUIRED ON)
set(CMAKE_EXPORT_COMPILE_COMMANDS ON)

if(MSVC)
  add_compile_options(/utf-8)
endif()

set(SOURCES
  ${CMAKE_SOURCE_DIR}/../shuangpin/dictionary.cpp
  ${CMAKE_SOURCE_DIR}/../shuangpin/pinyin_utils.cpp
  ${CMAKE_SOURCE_DIR}/../shuangpin/common_utils.cpp
)

find_package(unofficial-sqlite3 CONFIG REQUIRED)
set(Boost_ROOT "C:/Users/you/scoop/apps/boost/current")
find_package(Boost REQUIRED)

add_executable(test_shuangpin src/test_shuangpin.cpp ${SOURCES})
target_include_directories(test_shuangpin PRIVATE ${CMAKE_SOURCE_DIR}/.. ${Boost_INCLUDE_DIRS})
target_link_libraries(test_shuangpin PRIVATE unofficial::sqlite3::sqlite3)
`

// CMakePresetsTemplate has VCPKG_ROOT at index 8 and CMAKE_TOOLCHAIN_FILE at
// index 11.
const CMakePresetsTemplate = `{
  "version": 3,
  "configurePresets": [
    {
      "name": "default",
      "generator": "Ninja",
      "binaryDir": "${sourceDir}/build",
      "environment": {
        "VCPKG_ROOT": "C:/Users/you/scoop/apps/vcpkg/current/"
      },
      "cacheVariables": {
        "CMAKE_TOOLCHAIN_FILE": "C:/Users/you/scoop/apps/vcpkg/current/scripts/buildsystems/vcpkg.cmake",
        "CMAKE_BUILD_TYPE": "Debug"
      }
    }
  ]
}
`
